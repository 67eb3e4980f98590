package transfer

// NumberPrefix is the document number prefix for transfers.
// Transfers use a global daily sequence, not a per-store one.
const NumberPrefix = "TRF"
