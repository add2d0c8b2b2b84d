// Package units provides the dimensional-analysis capability used by the
// property lookups.
//
// A Quantity is a magnitude tagged with a Unit. Every Unit carries its
// Dimension (exponents over mass, length, time, temperature and amount of
// substance) and a Scale that converts the magnitude to SI base units.
//
// # Operations
//
//   - Conversion: Quantity.To converts between units of the same dimension
//   - Algebra: Mul, Div and Inverse compose units; Add and Sub require
//     matching dimensions
//   - Validation: Require converts to an expected unit or fails with a
//     *MismatchError
//
// Temperatures are treated as absolute (kelvin only); offset scales such as
// Celsius are not representable.
package units
