// Package nlp prepares post text for scoring: the Cleaner strips noise and
// drops low-effort posts, and the Analyzer attaches classified sentiment via
// the pluggable Classifier boundary. The built-in LexiconClassifier keeps the
// pipeline self-contained; a model-backed classifier can replace it without
// touching the rest of the system.
package nlp
