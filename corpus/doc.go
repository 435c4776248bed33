// Package corpus loads image sets from list files: one image name per line,
// blank lines ignored, every named image resolved through a blobstore and
// decoded as PGM.
package corpus
