// This file is part of Zwalker.
//
// Zwalker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zwalker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zwalker.  If not, see <https://www.gnu.org/licenses/>.

package execution

import (
	"errors"
	"fmt"

	"github.com/avwohl/zwalker-sub001/zmachine/instructions"
)

// ErrInvalidResult is wrapped by the error returned from IsValid().
var ErrInvalidResult = errors.New("invalid execution result")

// IsValid checks whether the result is consistent with its definition.
func (r Result) IsValid() error {
	if !r.Final {
		return fmt.Errorf("execution: not finalised (bad opcode?): %w", ErrInvalidResult)
	}

	if r.Defn == nil {
		return fmt.Errorf("execution: no definition: %w", ErrInvalidResult)
	}

	if len(r.Types) != len(r.Raw) || len(r.Raw) != len(r.Operands) {
		return fmt.Errorf("execution: operand lists differ in length: %w", ErrInvalidResult)
	}

	limit := 4
	if r.Defn.DoubleTypes {
		limit = 8
	}
	switch r.Defn.Class {
	case instructions.OP0:
		limit = 0
	case instructions.OP1:
		limit = 1
	}
	if len(r.Operands) > limit {
		return fmt.Errorf("execution: %d operands for %s (max %d): %w", len(r.Operands), r.Defn.Mnemonic, limit, ErrInvalidResult)
	}

	if r.Pops > len(r.Operands) {
		return fmt.Errorf("execution: more stack pops (%d) than operands: %w", r.Pops, ErrInvalidResult)
	}

	if r.Length < 1 {
		return fmt.Errorf("execution: zero length instruction: %w", ErrInvalidResult)
	}

	return nil
}
