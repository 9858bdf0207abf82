// Package group classifies decoded change records into counter-space groups.
//
// A Group is a closed sum type with six variants. Every variant implements
// Accept(Visitor), and Visitor has one method per variant, so adding a
// variant breaks compilation of every consumer until it is handled. Consumers
// must not fall back to a type switch with a default case.
//
// Classify is pure: it never mutates its inputs, never logs and never fails.
package group
