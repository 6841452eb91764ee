// Package main provides the authkit command line tool.
// It normalizes role names into authorities, converts JWT claims into an
// authenticated principal and reads or rewrites the Active Directory
// userAccountControl attribute of directory accounts.
package main
