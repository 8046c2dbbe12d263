// Package validate is the declarative input-validation pipeline for
// credential-bearing fields.
//
// A route declares a [RuleSet] mapping logical field names to one of a
// small closed set of syntactic kinds (email shape, minimum-length
// password, well-formed public-key encoding). Validation runs strictly
// before the route handler, aggregates every failing field into one
// verdict, and never touches persistent state.
package validate
