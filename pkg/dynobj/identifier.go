package dynobj

// Identifier is a dense integer standing in for an interned property name.
// Identifiers are issued in first-encounter order starting at 0, so the set
// of live identifiers for a factory is always the contiguous range
// [0, Factory.InternedCount()).
type Identifier int32

// invalidIdentifier marks "no identifier", used as the root shape's key.
const invalidIdentifier Identifier = -1
