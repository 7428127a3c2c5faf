// Package engine wires schema classification, rule resolution and envelope
// building for one (marketplace, country, category) at a time.
package engine
