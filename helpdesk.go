// Package helpdesk provides a question-answering assistant for a single
// event. It fetches a fixed set of help pages, indexes their text for
// retrieval-augmented generation, and answers questions submitted through a
// browser form, citing the source URLs the answer was drawn from.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, gemini/).
package helpdesk
