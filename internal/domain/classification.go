package domain

// ClassificationOutcome is the result of the classification stage: either a
// document type, or skipped (not requested, not configured, or failed).
type ClassificationOutcome struct {
	documentTypeID string
	classified     bool
}

// Classified returns an outcome carrying a document type. An empty id is
// treated as skipped because it cannot select an extractor.
func Classified(documentTypeID string) ClassificationOutcome {
	if documentTypeID == "" {
		return ClassificationSkipped()
	}
	return ClassificationOutcome{documentTypeID: documentTypeID, classified: true}
}

// ClassificationSkipped returns an outcome without a document type.
func ClassificationSkipped() ClassificationOutcome {
	return ClassificationOutcome{}
}

// DocumentTypeID returns the document type and whether one is present.
func (o ClassificationOutcome) DocumentTypeID() (string, bool) {
	return o.documentTypeID, o.classified
}
