/*
Package operation implements the stample pipeline: find template files, work
out their placeholders, get a value for each one, then write the transformed
copies.

	+-----------+     +-----------+     +-------------+
	|   Init    | --> |  Extract  | --> |  Reconcile  |
	|  (globs)  |     | (per file)|     | (CLI values)|
	+-----------+     +-----------+     +------+------+
	                                           |
	+-----------+     +-----------+     +------+------+
	|   Copy    | <-- | Transform | <-- |   Prompt    |
	| (mirrors) |     |  (gated)  |     | (sequential)|
	+-----------+     +-----------+     +-------------+

🎯 Purpose:
- Pair every matched source file with its mirror under the destination
- Collect the distinct placeholders of all files
- Refuse to write anything while a placeholder has no value

🔄 Flow:
1. Init resolves globs relative to the source directory
2. ExtractAllPlaceholders reads files concurrently and de-duplicates tokens
3. Caller values are applied with placeholder.Reconcile
4. ResolvePlaceholders prompts for the rest, one placeholder at a time
5. TransformAllFiles checks the set (IncompleteResolutionError,
   UnsuppliedPlaceholderError) and then transforms every file
6. CopyAllFiles writes the mirrors (ErrNotTransformed if a file was skipped)

⚡ Concurrency:
Per-file steps fan out with errgroup, bounded by Options.Concurrency. A
TrackedFile is only ever touched by one goroutine. Prompts never overlap.
Copying is not atomic across files: mirrors written before a failure stay.

🔍 Example:

	files, err := operation.Stample(ctx, operation.Options{
		Source:       "templates/webdev",
		Destination:  "src",
		Globs:        []string{"pages/*.html", "scripts/*.ts"},
		Placeholders: []placeholder.Placeholder{placeholder.FromName("TITLE", "My Page")},
	})
*/
package operation
