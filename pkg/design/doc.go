// Package design defines the batch of nose-cone parts produced by one
// evaluation. A Design is never mutated in place after evaluation; each
// evaluation produces a new one.
package design
