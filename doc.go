// Package blobkit provides a URL-addressed blob store backed by a local
// filesystem, with a sandboxed storage root, bidirectional path/URL mapping,
// extension policy enforcement, transient-failure retry, and deletion
// notification.
//
// Blobs are addressed by URL in any of three equivalent forms: absolute
// (https://host/assets/catalog/a.png), site-relative (/catalog/a.png), or
// bare relative (catalog/a.png). The [Mapper] translates between the URL
// namespace and filesystem paths under the storage root; the [Store]
// validates that every resolved path stays inside the root before touching
// the filesystem, making crafted "../" inputs a fatal [ErrPathViolation].
//
// # Basic Usage
//
//	store, err := blobkit.New(&blobkit.Config{
//	    StorageRoot:   "./storage",
//	    PublicBaseURL: "https://localhost:5001/assets",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//
//	// Write a blob
//	w, err := store.OpenWrite(ctx, "catalog/hello.txt")
//	io.WriteString(w, "Hello, World!")
//	w.Close()
//
//	// Read it back
//	r, err := store.OpenRead(ctx, "catalog/hello.txt")
//
//	// Metadata and existence
//	info, err := store.GetInfo(ctx, "catalog/hello.txt")
//	ok, err := store.Exists(ctx, "catalog/hello.txt")
//
//	// List a folder, or search it recursively by keyword
//	res, err := store.Search(ctx, "catalog", "")
//	res, err = store.Search(ctx, "", "hello")
//
// # Interface Segregation
//
// The Store implements narrow capability interfaces ([BlobReader],
// [BlobWriter], [URLResolver]) combined in [BlobStore]. Use the narrow
// types in function signatures to enforce access patterns at compile time.
// Optional capabilities follow the type-assertion convention:
//
//	if mover, ok := store.(blobkit.CanMove); ok {
//	    mover.Move(ctx, "a/old.png", "a/new.png")
//	}
//
//	if cs, ok := store.(blobkit.CanChecksum); ok {
//	    hash, err := cs.Checksum(ctx, "file.txt", blobkit.ChecksumSHA256)
//	}
//
//	if watcher, ok := store.(blobkit.CanWatch); ok {
//	    token, err := watcher.Watch(ctx, "**/*.json")
//	    if token.HasChanged() {
//	        // Handle change
//	    }
//	}
//
// # Transient-Failure Retry
//
// Opening a blob for reading retries sharing violations and similar
// transient I/O failures with exponential backoff and jitter (3 extra
// attempts starting at 50ms by default), logging one warning per attempt.
// Local file locks taken briefly by external processes (antivirus
// scanners, backups, a concurrent writer finishing a rename) usually clear
// within tens of milliseconds, so retrying avoids surfacing failures for a
// condition that self-heals. A missing file fails immediately with
// [ErrNotExist]: retrying cannot help and would only add latency.
//
// # Configuration
//
// Configuration loads from the environment through beaver-kit/config:
//
//	store, err := blobkit.NewFromEnv()           // BEAVER_BLOBKIT_* variables
//	store, err = blobkit.WithPrefix("CDN").New() // CDN_BLOBKIT_* variables
//
// The storage root and public base URL are validated eagerly; a store is
// never constructed over an invalid configuration.
package blobkit
