package conf

import "math"

// KeyAbsent - Reserved key value marking a slot as free, it can never be used as a key by callers
const KeyAbsent int64 = math.MinInt64

// NilSlot - Terminates free lists and bucket chains, and indicates a missing slot in lookups
const NilSlot int64 = -1
