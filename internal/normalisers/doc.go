// Package normalisers provides implementations of the driven.Normaliser
// interface. A normaliser decides what counts as "the same text" for every
// validator: Unicode form, case folding, punctuation and tokenisation.
//
// Normalisers are selected by name from the rule configuration.
package normalisers
