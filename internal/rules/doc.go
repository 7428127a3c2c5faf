// Package rules provides the mapping rule model, the immutable RuleSet and
// its YAML/JSON loader.
//
// A RuleSet holds one MappingRule per target marketplace attribute for a
// single (marketplace, country, category) triple. It is loaded once,
// shared read-only between concurrent resolutions and replaced wholesale
// when the configuration changes.
//
// # Document Overview
//
// The rule document has the following structure (JSON is accepted too):
//
//	version: "2024-05-01"
//	marketplace: walmart
//	country: US
//	category: sofas
//	rules:
//	  - attributeId: brand
//	    mappingType: channel_data
//	    value: brand
//	    isRequired: true
//	  - attributeId: condition
//	    mappingType: default_value
//	    value: New
//	  - attributeId: shippingWeight
//	    mappingType: auto_generate
//	    value: {ruleType: shipping_weight_extract, param: {unit: lb}}
//	  - attributeId: productIdentifier
//	    mappingType: upc_pool
//	  - attributeId: warrantyText
//	    mappingType: channel_data
//	    value: warranty.text
//	    conditionalRequired:
//	      - dependsOn: warrantyURL
//	        dependsOnValue: present
//
// # Rule Values
//
// The value payload is a tagged union keyed by mappingType:
//   - default_value: Literal, any YAML value
//   - channel_data: SourcePath, a dotted/indexed record path
//   - enum_select: EnumChoice, a literal chosen from the allowed set
//   - auto_generate: Generator, {ruleType, param} or a bare rule type name
//   - upc_pool: PoolSlot, empty or a pool name
//
// # Load-time Checks
//
// Duplicate attribute ids fail the load. Conditions referencing an
// attribute that is not in the set, and channel paths that do not parse,
// are recorded as warnings so partial configurations still load.
package rules
