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


package ingestion

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Fasteroid/partial-pattern-tree/core"
)

// compileBatch compiles the descriptions of batch on the compile pool.
// The result is index-aligned with batch.
func (p *Pipeline) compileBatch(batch []*core.Entry) ([]core.Sequence, error) {
	sequences := make([]core.Sequence, len(batch))
	errs := make([]error, len(batch))

	var wg sync.WaitGroup
	for i, entry := range batch {
		wg.Add(1)
		err := p.compilePool.Submit(func() {
			defer wg.Done()
			seq, err := entry.Sequence()
			if err != nil {
				errs[i] = fmt.Errorf("%w: entry %q: %w", ErrBuildFailed, entry.Name, err)
				return
			}
			sequences[i] = seq
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sequences, nil
}
