// Package device prepares the Android device the file server runs on.
//
// The server listens on the device. adb forwards the SFTP, FTP and passive
// FTP ports to the host so the clients can reach it on localhost.
package device
