package puz

import "fmt"

// WarningCode identifies the class of a recoverable decode anomaly.
type WarningCode string

const (
	WarnChecksumMismatch  WarningCode = "ChecksumMismatch"
	WarnEncodingFallback  WarningCode = "EncodingFallback"
	WarnUnexpectedCell    WarningCode = "UnexpectedCellByte"
	WarnGridMismatch      WarningCode = "GridMismatch"
	WarnClueCountMismatch WarningCode = "ClueCountMismatch"
	WarnSectionChecksum   WarningCode = "SectionChecksumMismatch"
	WarnSectionIgnored    WarningCode = "SectionIgnored"
	WarnTruncatedSection  WarningCode = "TruncatedSection"
	WarnMalformedRebus    WarningCode = "MalformedRebusEntry"
	WarnBrokenRebus       WarningCode = "BrokenRebus"
	WarnScrambled         WarningCode = "ScrambledPuzzle"
	WarnShortNotes        WarningCode = "ShortNotes"
)

// Warning is one recoverable anomaly. Warnings never abort a parse; they are
// appended to the Result in the order the decoder hit them.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return string(w.Code) + ": " + w.Message
}

func warnf(code WarningCode, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
