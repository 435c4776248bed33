// Package blobstore abstracts read-only access to the image corpus. List
// files name blobs; a BlobStore resolves those names against a local
// directory, an in-memory map, or an object store (see the s3 and minio
// subpackages).
package blobstore
