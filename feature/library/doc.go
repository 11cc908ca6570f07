// Package library keeps a local copy of a shared font library stored in an
// S3 compatible bucket. Synced fonts land in fonts.library_dir, which the
// font index scans like any other font directory.
package library
