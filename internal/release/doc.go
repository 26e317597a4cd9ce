// Package release cuts a release of the Android app.
//
// The app version lives in the gradle build file as a SNAPSHOT. A release
// sets the plain version, builds the signed APK, commits and tags, then
// moves the build file on to the next SNAPSHOT with a bumped version code.
// Optionally the APK is copied to a releases directory and published as a
// GitHub release asset.
//
// Steps run strictly one after another and the first failure stops the
// release. Nothing is undone, so a failed release needs manual cleanup.
package release
