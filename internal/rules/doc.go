// Package rules implements the repository policy engine: recommendation
// tags, the ordered rule variants, the evaluator that applies them, and the
// distiller that reduces accumulated tags to a single display recommendation.
//
// Rule order is load-bearing. Rename-style rules read the proposed name left
// behind by earlier rules, so the default rule set normalizes underscores
// before suffixing gem repositories and suffixes gem repositories before
// namespace prefixing.
package rules
