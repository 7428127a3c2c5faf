package heuristic

// builtins is the closed set of heuristics available to auto_generate rules.
var builtins = []Entry{
	// Direct field with fallback.
	{Name: "color_extract", Strategy: StrategyDirectFallback, Description: "color field, attribute bag, then color vocabulary in title and description",
		Heuristic: directOrVocabulary([]string{"color", "colour"}, colorVocabulary)},
	{Name: "material_extract", Strategy: StrategyDirectFallback, Description: "material field, attribute bag, then material vocabulary",
		Heuristic: directOrVocabulary([]string{"material", "primaryMaterial"}, materialVocabulary)},
	{Name: "finish_extract", Strategy: StrategyDirectFallback, Description: "finish field, attribute bag, then finish vocabulary",
		Heuristic: directOrVocabulary([]string{"finish"}, finishVocabulary)},
	{Name: "style_extract", Strategy: StrategyDirectFallback, Description: "style field, attribute bag, then style vocabulary",
		Heuristic: directOrVocabulary([]string{"style"}, styleVocabulary)},
	{Name: "shape_extract", Strategy: StrategyDirectFallback, Description: "shape field, attribute bag, then shape vocabulary",
		Heuristic: Func(extractShape)},
	{Name: "pattern_extract", Strategy: StrategyDirectFallback, Description: "pattern field, attribute bag, then pattern vocabulary",
		Heuristic: directOrVocabulary([]string{"pattern"}, patternVocabulary)},
	{Name: "room_type_extract", Strategy: StrategyDirectFallback, Description: "every room named in roomType or the text",
		Heuristic: Func(extractRoomType)},
	{Name: "brand_extract", Strategy: StrategyDirectFallback, Description: "brand, vendor, then manufacturer",
		Heuristic: direct("brand", "vendor", "manufacturer")},
	{Name: "manufacturer_extract", Strategy: StrategyDirectFallback, Description: "manufacturer, brand, then vendor",
		Heuristic: direct("manufacturer", "brand", "vendor")},
	{Name: "model_number_extract", Strategy: StrategyDirectFallback, Description: "model number, mpn, then SKU",
		Heuristic: Func(extractModelNumber)},
	{Name: "product_name", Strategy: StrategyDirectFallback, Description: "title with collapsed whitespace, cut to max_length",
		Heuristic: Func(extractProductName)},
	{Name: "short_description", Strategy: StrategyDirectFallback, Description: "description without markup, cut to max_length",
		Heuristic: Func(extractShortDescription)},
	{Name: "key_features", Strategy: StrategyDirectFallback, Description: "feature list, description list items, then sentences",
		Heuristic: Func(extractKeyFeatures)},
	{Name: "main_image_url", Strategy: StrategyDirectFallback, Description: "first image URL",
		Heuristic: Func(extractMainImage)},
	{Name: "additional_image_urls", Strategy: StrategyDirectFallback, Description: "image URLs after the first",
		Heuristic: Func(extractAdditionalImages)},
	{Name: "country_of_origin", Strategy: StrategyDirectFallback, Description: "origin country, optionally as alpha-2",
		Heuristic: Func(extractCountryOfOrigin)},
	{Name: "condition", Strategy: StrategyDirectFallback, Description: "condition field, default New",
		Heuristic: Func(extractCondition)},
	{Name: "age_group", Strategy: StrategyDirectFallback, Description: "age group field, default Adult",
		Heuristic: Func(ageGroup)},

	// Numeric extraction from free text.
	{Name: "piece_count_extract", Strategy: StrategyTextNumeric, Description: "set of N, N-piece set, N pc set; default 1",
		Heuristic: countFromText([]string{"pieceCount", "pieces"}, pieceCountPatterns, 1)},
	{Name: "seating_capacity_extract", Strategy: StrategyTextNumeric, Description: "seats N, N-seater, N person",
		Heuristic: countFromText([]string{"seatingCapacity", "seats"}, seatingPatterns, 0)},
	{Name: "drawer_count_extract", Strategy: StrategyTextNumeric, Description: "N drawers",
		Heuristic: countFromText([]string{"drawerCount", "numberOfDrawers"}, drawerPatterns, 0)},
	{Name: "shelf_count_extract", Strategy: StrategyTextNumeric, Description: "N shelves, N-tier",
		Heuristic: countFromText([]string{"shelfCount", "numberOfShelves"}, shelfPatterns, 0)},
	{Name: "multipack_quantity", Strategy: StrategyTextNumeric, Description: "pack of N, N-pack, set of N; default 1",
		Heuristic: countFromText([]string{"multipackQuantity", "packQuantity", "quantityPerPack"}, packPatterns, 1)},
	{Name: "max_load_weight_extract", Strategy: StrategyTextNumeric, Description: "weight capacity field or 'supports up to N lbs'",
		Heuristic: Func(extractMaxLoad)},

	// Unit-normalizing extraction.
	{Name: "shipping_weight_extract", Strategy: StrategyUnitNormalizing, Description: "package weight converted to unit (default lb)",
		Heuristic: Func(extractShippingWeight)},
	{Name: "product_weight_extract", Strategy: StrategyUnitNormalizing, Description: "item weight converted to unit (default lb)",
		Heuristic: Func(extractProductWeight)},
	{Name: "assembled_length_extract", Strategy: StrategyUnitNormalizing, Description: "assembled length converted to unit (default in)",
		Heuristic: dimension(dimLength, "assembledLength", "length", "dimensions.length", "depth")},
	{Name: "assembled_width_extract", Strategy: StrategyUnitNormalizing, Description: "assembled width converted to unit (default in)",
		Heuristic: dimension(dimWidth, "assembledWidth", "width", "dimensions.width")},
	{Name: "assembled_height_extract", Strategy: StrategyUnitNormalizing, Description: "assembled height converted to unit (default in)",
		Heuristic: dimension(dimHeight, "assembledHeight", "height", "dimensions.height")},

	// Composite and derived values.
	{Name: "calculate_price", Strategy: StrategyDerived, Description: "round2(base * multiplier + addition)",
		Heuristic: Func(calculatePrice)},
	{Name: "sku_to_identifier", Strategy: StrategyDerived, Description: "SKU transliterated to a safe ASCII identifier",
		Heuristic: Func(skuToIdentifier)},
	{Name: "sku_passthrough", Strategy: StrategyDerived, Description: "SKU from context or record",
		Heuristic: Func(skuPassthrough)},
	{Name: "shop_identifier", Strategy: StrategyDerived, Description: "shop id from context",
		Heuristic: Func(shopIdentifier)},
	{Name: "fulfillment_lag_time", Strategy: StrategyDerived, Description: "handling days from record or param days",
		Heuristic: Func(fulfillmentLagTime)},
	{Name: "keywords", Strategy: StrategyDerived, Description: "tags and title words without stop words",
		Heuristic: Func(extractKeywords)},
	{Name: "assembly_required", Strategy: StrategyDerived, Description: "explicit flag, then assembly phrases",
		Heuristic: Func(assemblyRequired)},
	{Name: "upholstered", Strategy: StrategyDerived, Description: "explicit flag, then upholstery terms",
		Heuristic: Func(upholstered)},

	// Segment decomposition.
	{Name: "items_included", Strategy: StrategySegmentDecomposition, Description: "'<A> and <B> Set of N' split into canonical items",
		Heuristic: Func(itemsIncluded)},
}
