package salereturn

// NumberPrefix is the document number prefix for sale returns.
// Sale returns use a global daily sequence.
const NumberPrefix = "RET"
