package purchasereturn

// NumberPrefix is the document number prefix for purchase returns.
// Purchase returns use a global daily sequence.
const NumberPrefix = "PRET"
