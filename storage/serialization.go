// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/deskrag/core"
)

var vectorMUS = ord.NewSliceSer[float32](raw.Float32)

// idSer serializes core.ID as a varint uint64.
type idSer struct{}

// IDMUS is the MUS serializer for core.ID.
var IDMUS = idSer{}

func (idSer) Marshal(id core.ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (core.ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (idSer) Size(id core.ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// metadataSer serializes core.Metadata field by field.
// EffectiveDate is stored as Unix microseconds in UTC.
type metadataSer struct{}

// MetadataMUS is the MUS serializer for core.Metadata.
var MetadataMUS = metadataSer{}

func (metadataSer) Marshal(m core.Metadata, bs []byte) (n int) {
	n = ord.String.Marshal(m.Source, bs)
	n += varint.Int.Marshal(int(m.DocType), bs[n:])
	n += varint.Int64.Marshal(m.EffectiveDate.UTC().UnixMicro(), bs[n:])
	n += varint.Int.Marshal(m.Year, bs[n:])
	n += varint.Int.Marshal(m.Version, bs[n:])
	return n
}

func (metadataSer) Unmarshal(bs []byte) (m core.Metadata, n int, err error) {
	var n1 int
	m.Source, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return m, n, err
	}

	var docType int
	docType, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.DocType = core.DocType(docType)

	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}
	m.EffectiveDate = time.UnixMicro(micros).UTC()

	m.Year, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, n, err
	}

	m.Version, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return m, n, err
}

func (metadataSer) Size(m core.Metadata) (size int) {
	size = ord.String.Size(m.Source)
	size += varint.Int.Size(int(m.DocType))
	size += varint.Int64.Size(m.EffectiveDate.UTC().UnixMicro())
	size += varint.Int.Size(m.Year)
	size += varint.Int.Size(m.Version)
	return size
}

func (metadataSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return n, err
}

// documentSer serializes core.Document field by field.
type documentSer struct{}

// DocumentMUS is the MUS serializer for core.Document.
var DocumentMUS = documentSer{}

func (documentSer) Marshal(d core.Document, bs []byte) (n int) {
	n = IDMUS.Marshal(d.Id, bs)
	n += ord.String.Marshal(d.Source, bs[n:])
	n += ord.String.Marshal(d.Content, bs[n:])
	n += MetadataMUS.Marshal(d.Metadata, bs[n:])
	n += vectorMUS.Marshal(d.Vector, bs[n:])
	return n
}

func (documentSer) Unmarshal(bs []byte) (d core.Document, n int, err error) {
	var n1 int
	d.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return d, n, err
	}

	d.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return d, n, err
	}

	d.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return d, n, err
	}

	d.Metadata, n1, err = MetadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return d, n, err
	}

	d.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return d, n, err
}

func (documentSer) Size(d core.Document) (size int) {
	size = IDMUS.Size(d.Id)
	size += ord.String.Size(d.Source)
	size += ord.String.Size(d.Content)
	size += MetadataMUS.Size(d.Metadata)
	size += vectorMUS.Size(d.Vector)
	return size
}

func (documentSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = MetadataMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	return n, err
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, DocumentMUS.Size(*doc))
	DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}
