// Package fileutil walks a project tree and selects the files to archive.
//
// Scan prunes excluded directories with filepath.SkipDir, so dependency
// trees such as node_modules are never visited, and filters the remaining
// files by exact file name and by extension:
//
//	result, err := fileutil.Scan(root, fileutil.ScanOptions{
//	    Extensions:   []string{".jsx", ".js", ".md"},
//	    ExcludeDirs:  []string{"node_modules", ".git"},
//	    ExcludeFiles: []string{"package-lock.json"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, rec := range result.Files {
//	    fmt.Println(rec.Path, rec.Extension)
//	}
//
// Matching is case-sensitive string equality. Extensions follow
// models.Extension: a leading dot is part of the name, so ".env" has no
// extension.
//
// Errors below the root, such as a subdirectory that cannot be listed, are
// collected in ScanResult.Errors and the walk continues. Only a root that is
// missing or not a directory is fatal.
//
// Results are returned in walk order; callers sort them as needed.
package fileutil
