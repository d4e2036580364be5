package logger

// Most non-error log messages are given a message ID that can be used to set
// the log level for that message. Errors do not get a message ID because you
// cannot turn errors into non-errors (otherwise the compilation would
// incorrectly succeed). MsgID_None is used for messages that aren't worth
// letting the caller individually silence.
type MsgID = uint8

const (
	MsgID_None MsgID = iota

	// Parsing and construction
	MsgID_Selector_BogusCombinator
	MsgID_Selector_VendorPrefixedPseudo
	MsgID_Selector_DuplicatePseudoElement
	MsgID_Selector_EmptyCompound

	// Extension store
	MsgID_Extend_NearingEndlessExtendBound
	MsgID_Extend_PlaceholderNeverEmitted
	MsgID_Extend_TrimmedAlternativesCapped

	MsgID_END // Keep this at the end (used only for tests)
)

func StringToMsgIDs(str string, logLevel LogLevel, overrides map[MsgID]LogLevel) {
	switch str {
	case "bogus-combinator":
		overrides[MsgID_Selector_BogusCombinator] = logLevel
	case "vendor-prefixed-pseudo":
		overrides[MsgID_Selector_VendorPrefixedPseudo] = logLevel
	case "duplicate-pseudo-element":
		overrides[MsgID_Selector_DuplicatePseudoElement] = logLevel
	case "empty-compound":
		overrides[MsgID_Selector_EmptyCompound] = logLevel
	case "nearing-endless-extend-bound":
		overrides[MsgID_Extend_NearingEndlessExtendBound] = logLevel
	case "placeholder-never-emitted":
		overrides[MsgID_Extend_PlaceholderNeverEmitted] = logLevel
	case "trimmed-alternatives-capped":
		overrides[MsgID_Extend_TrimmedAlternativesCapped] = logLevel
	default:
		// Ignore invalid entries since this message id may have
		// been renamed/removed since when this code was written
	}
}

func MsgIDToString(id MsgID) string {
	switch id {
	case MsgID_Selector_BogusCombinator:
		return "bogus-combinator"
	case MsgID_Selector_VendorPrefixedPseudo:
		return "vendor-prefixed-pseudo"
	case MsgID_Selector_DuplicatePseudoElement:
		return "duplicate-pseudo-element"
	case MsgID_Selector_EmptyCompound:
		return "empty-compound"
	case MsgID_Extend_NearingEndlessExtendBound:
		return "nearing-endless-extend-bound"
	case MsgID_Extend_PlaceholderNeverEmitted:
		return "placeholder-never-emitted"
	case MsgID_Extend_TrimmedAlternativesCapped:
		return "trimmed-alternatives-capped"
	}
	return ""
}

// Some message IDs are more diverse internally than externally (in case we
// want to expand the set of them later on). So just map these to the largest
// one arbitrarily since you can't tell the difference externally anyway.
func StringToMaximumMsgID(id string) MsgID {
	overrides := make(map[MsgID]LogLevel)
	maxID := MsgID_None
	StringToMsgIDs(id, LevelInfo, overrides)
	for id := range overrides {
		if id > maxID {
			maxID = id
		}
	}
	return maxID
}
