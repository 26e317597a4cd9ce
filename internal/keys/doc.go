// Package keys knows the private key files of the test setup.
//
// The server's test resources ship one key per supported algorithm plus two
// deliberately bad keys the server must refuse. Inventory parses each file
// with golang.org/x/crypto/ssh so a broken checkout shows up before the key
// matrix scenario reports confusing authentication failures.
package keys
