// Package orchestrator wires schema sources, the model builder and the
// renderer registry into a single Generate call: load and normalise a schema
// document (or use a configured provider), build the model for one content
// type, print it to tokens and format the tokens with the requested renderer.
package orchestrator
