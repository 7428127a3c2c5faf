// Package schema classifies marketplace schema descriptions into field
// format tables.
//
// A schema document describes the wire shape of every attribute a
// marketplace accepts, globally and per category. The classifier walks each
// field and assigns one FieldFormat using a fixed priority:
//
//  1. object whose children are exactly language codes: multiLangObject
//  2. array whose items are such an object: multiLangArray
//  3. object with exactly "unit" and "magnitude": measurementObject
//  4. array of scalars: plainArray
//  5. leaf with a closed value set: enum
//  6. anything else: scalar
//
// Plain objects are descended into and their leaves keyed by dotted path.
// Tables are immutable once built; the Cache rebuilds them wholesale when a
// schema changes.
package schema
