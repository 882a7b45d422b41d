// Package services contains pure domain services for the pricing engine:
// the chargeable weight calculator and the rate card calculator. Both are
// deterministic, perform no I/O, and hold no mutable state, which keeps
// them safe to share across concurrent rate aggregations.
package services
