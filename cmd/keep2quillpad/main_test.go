package main

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"keep2quillpad": func() { os.Exit(run()) },
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"zipcat": cmdZipCat,
			"mkzip":  cmdMkZip,
		},
	})
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "keep2quillpad", rootCmd.Name())

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"convert", "catalog", "version"})
}

// cmdZipCat copies one entry of a zip archive to a file.
func cmdZipCat(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("zipcat does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: zipcat ZIP ENTRY OUT")
	}

	r, err := zip.OpenReader(ts.MkAbs(args[0]))
	ts.Check(err)
	defer r.Close()

	in, err := r.Open(args[1])
	ts.Check(err)
	defer in.Close()

	out, err := os.Create(ts.MkAbs(args[2]))
	ts.Check(err)
	defer out.Close()

	_, err = io.Copy(out, in)
	ts.Check(err)
}

// cmdMkZip archives a directory tree into a zip file, with entry names
// relative to the directory.
func cmdMkZip(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("mkzip does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: mkzip DIR ZIP")
	}

	root := ts.MkAbs(args[0])
	f, err := os.Create(ts.MkAbs(args[1]))
	ts.Check(err)
	defer f.Close()

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	ts.Check(err)
	ts.Check(zw.Close())
}
