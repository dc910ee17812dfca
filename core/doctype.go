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


package core

import "fmt"

// DocType classifies a document into one of four mutually exclusive categories.
type DocType int

const (
	// DocTypePolicy is a rules/permissions/benefits document. Multiple policy
	// documents may conflict; only the latest one is authoritative.
	DocTypePolicy DocType = iota + 1
	// DocTypeMenu is a cafeteria/dining document.
	DocTypeMenu
	// DocTypeMemo is an announcement or notice.
	DocTypeMemo
	// DocTypeGeneral is everything else.
	DocTypeGeneral
)

var docTypeNames = map[DocType]string{
	DocTypePolicy:  "policy",
	DocTypeMenu:    "menu",
	DocTypeMemo:    "memo",
	DocTypeGeneral: "general",
}

// String returns the lowercase wire name of the document type.
func (t DocType) String() string {
	if name, ok := docTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("doctype(%d)", int(t))
}

// DocTypeNames lists the valid wire names, in declaration order.
// These are the category names used in classifier prompts and schemas.
func DocTypeNames() []string {
	return []string{"policy", "menu", "memo", "general"}
}

// ParseDocType converts a wire name to a DocType.
// Returns ErrInvalidDocType for unknown names.
func ParseDocType(name string) (DocType, error) {
	for t, n := range docTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDocType, name)
}
