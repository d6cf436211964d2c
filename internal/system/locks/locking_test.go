/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package locks

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestDistributedLocks(t *testing.T) {
	type backend struct {
		lock    DistributedLock
		advance func(d time.Duration)
	}

	backends := map[string]func(t *testing.T) backend{
		"memory": func(t *testing.T) backend {
			clock := &fakeClock{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
			return backend{
				lock:    NewMemoryLockWithClock(clock.Now),
				advance: func(d time.Duration) { clock.now = clock.now.Add(d) },
			}
		},
		"redis": func(t *testing.T) backend {
			server := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: server.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return backend{
				lock:    NewRedisLock(client, "test:locks:"),
				advance: server.FastForward,
			}
		},
	}

	for name, newBackend := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			b := newBackend(t)

			release, ok, err := b.lock.Acquire(ctx, "ingest:a", time.Minute)
			require.NoError(t, err)
			require.True(t, ok)

			_, ok, err = b.lock.Acquire(ctx, "ingest:a", time.Minute)
			require.NoError(t, err)
			assert.False(t, ok, "a held lease is exclusive")

			_, ok, err = b.lock.Acquire(ctx, "ingest:b", time.Minute)
			require.NoError(t, err)
			assert.True(t, ok, "other keys are independent")

			require.NoError(t, release(ctx))
			releaseAgain, ok, err := b.lock.Acquire(ctx, "ingest:a", time.Minute)
			require.NoError(t, err)
			require.True(t, ok)

			b.advance(2 * time.Minute)
			_, ok, err = b.lock.Acquire(ctx, "ingest:a", time.Minute)
			require.NoError(t, err)
			assert.True(t, ok, "an expired lease can be taken over")

			require.NoError(t, releaseAgain(ctx))
			_, ok, err = b.lock.Acquire(ctx, "ingest:a", time.Minute)
			require.NoError(t, err)
			assert.False(t, ok, "a stale release must not free the new holder's lease")
		})
	}
}
