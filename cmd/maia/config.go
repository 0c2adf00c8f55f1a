// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/maia/builtin/staking"
)

// loadOptions reads the engine options from a YAML file. Keys missing from the
// file keep their default value.
func loadOptions(path string) (staking.Options, error) {
	opts := staking.DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrap(err, "read config")
	}
	if err := decodeOptions(bytes.NewReader(data), &opts); err != nil {
		return opts, errors.Wrapf(err, "config %s", path)
	}
	return opts, nil
}

func decodeOptions(r io.Reader, opts *staking.Options) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && err != io.EOF {
		return err
	}
	return opts.Validate()
}

func dumpOptions(w io.Writer, opts staking.Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&opts); err != nil {
		return err
	}
	return enc.Close()
}
