// Package protocol builds and issues single file-transfer operations against
// an FTP or SFTP server through curl, and SCP transfers through scp.
//
// Every operation is one client invocation. Listings are a plain fetch of a
// directory URL. Directory and file mutations are server commands passed with
// curl's -Q option against the home URL:
//
//	action        SFTP                 FTP
//	create dir    MKDIR path           MKD path
//	remove dir    RMDIR path           RMD path
//	remove file   RM path              DELE path
//	rename        RENAME old new       RNFR old, RNTO new
//
// Mutations never check the client's exit status; the listing curl prints
// afterwards is what the caller asserts on.
package protocol
