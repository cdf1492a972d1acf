package service

import "docflow/internal/domain"

// ResolveExtractor picks the extractor for a classification outcome.
//
// With a document type, only an exact mapping entry is used; an unmapped type
// yields no extractor. Without a document type the earliest configured entry
// is used. The two cases are intentionally not unified: an unmapped type
// skips extraction rather than guessing. A classification prompt bundle that
// fails to load also arrives here as a skipped outcome instead of failing the
// run. An entry needs both an ID and a name to be usable.
func ResolveExtractor(outcome domain.ClassificationOutcome, extractors domain.ExtractorMap) (domain.ExtractorRef, bool) {
	if docType, ok := outcome.DocumentTypeID(); ok {
		ref, found := extractors.Get(docType)
		if !found || !usable(ref) {
			return domain.ExtractorRef{}, false
		}
		return ref, true
	}

	first, ok := extractors.First()
	if !ok || !usable(first.Extractor) {
		return domain.ExtractorRef{}, false
	}
	return first.Extractor, true
}

func usable(ref domain.ExtractorRef) bool {
	return ref.ID != "" && ref.Name != ""
}
