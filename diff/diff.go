// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff shows the changes made to a file
// in unified diff format, using the system diff tool.
package diff

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Diff returns the unified diff from old to new, labeled as the file
// name before and after the change. It returns nil if old and new
// are identical.
func Diff(name string, old, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	f1, err := writeTempFile(old)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f1)

	f2, err := writeTempFile(new)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f2)

	oldName, newName := "old/"+name, "new/"+name
	data, err := exec.Command("diff", "-u", "-L", oldName, "-L", newName, f1, f2).CombinedOutput()
	var ee *exec.ExitError
	if err != nil && !(errors.As(err, &ee) && ee.ExitCode() == 1) {
		// diff exits 1 when the files differ, 2 on trouble.
		return nil, fmt.Errorf("diff %s: %v\n%s", name, err, data)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return append([]byte(fmt.Sprintf("diff %s %s\n", oldName, newName)), data...), nil
}

func writeTempFile(data []byte) (string, error) {
	file, err := os.CreateTemp("", "letchain-diff")
	if err != nil {
		return "", err
	}
	_, err = file.Write(data)
	if err1 := file.Close(); err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(file.Name())
		return "", err
	}
	return file.Name(), nil
}
