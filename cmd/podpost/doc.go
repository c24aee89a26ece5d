// Command podpost drives a podfic project from downloaded parent-work HTML
// to a posted, announced work.
package main
