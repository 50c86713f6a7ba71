package domain

// QuantityEpsilon is the tolerance for floating comparisons on quantities.
// Quantities are stored as floats to allow fractional counts; every
// "would exceed" check uses this epsilon instead of exact comparison.
const QuantityEpsilon = 1e-9
