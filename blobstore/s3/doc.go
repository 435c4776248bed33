// Package s3 implements blobstore.BlobStore on top of Amazon S3. Fetches go
// through the transfer manager and can be rate limited to keep a large
// corpus download from saturating the link.
package s3
