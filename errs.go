// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package ssdfair

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrConfig marks invalid tool configuration: non-positive counts, missing
// required parameters, and the like. Wrapped errors add the specifics.
const ErrConfig = constError("invalid configuration")

// ErrDataFormat marks input that does not conform to the expected schema:
// missing columns, unparsable fields, empty datasets. It is distinct from
// plain I/O failures (which surface as wrapped *fs.PathError values), so a
// missing file and a malformed one remain distinguishable with errors.Is.
const ErrDataFormat = constError("malformed input data")
