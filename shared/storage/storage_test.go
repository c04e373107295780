package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/config"
	"tripplanner/infras/otel"
	"tripplanner/shared/storage"
)

type record struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type driverFactory func(t *testing.T) storage.Driver

func drivers() map[string]driverFactory {
	return map[string]driverFactory{
		"memory": func(_ *testing.T) storage.Driver {
			return storage.NewMemoryDriver()
		},
		"redis": func(t *testing.T) storage.Driver {
			mr := miniredis.RunT(t)
			client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })

			return storage.NewRedisDriver(client, "trip:changes")
		},
	}
}

func newStorage(driver storage.Driver, namespace string) storage.Storage {
	cfg := &config.Config{}
	cfg.Store.Namespace = namespace

	return storage.New(driver, cfg, otel.NewNoop())
}

func TestStorage_LoadSave(t *testing.T) {
	for name, factory := range drivers() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			driver := factory(t)
			store := newStorage(driver, "")

			var users []record
			res, err := store.Load(ctx, "trip_users", &users)
			require.NoError(t, err)
			assert.Equal(t, storage.Absent, res)
			assert.Empty(t, users)

			want := []record{{Name: "Ann", Email: "ann@x.com"}, {Name: "Bo", Email: "bo@x.com"}}
			require.NoError(t, store.Save(ctx, "trip_users", want, 0))

			res, err = store.Load(ctx, "trip_users", &users)
			require.NoError(t, err)
			assert.Equal(t, storage.Found, res)
			assert.Equal(t, want, users)

			raw, found, err := driver.Get(ctx, "trip_users")
			require.NoError(t, err)
			assert.True(t, found)
			assert.JSONEq(t, `[{"name":"Ann","email":"ann@x.com"},{"name":"Bo","email":"bo@x.com"}]`, raw)
		})
	}
}

func TestStorage_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		result storage.Result
	}{
		{name: "unparsable text", raw: "{not json", result: storage.Recovered},
		{name: "wrong shape", raw: `{"name":"Ann"}`, result: storage.Recovered},
		{name: "literal null", raw: "null", result: storage.Absent},
	}

	for name, factory := range drivers() {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				ctx := context.Background()
				driver := factory(t)
				store := newStorage(driver, "")

				require.NoError(t, driver.Set(ctx, "trip_bookings", tt.raw, 0))

				bookings := []record{{Name: "stale"}}
				res, err := store.Load(ctx, "trip_bookings", &bookings)

				require.NoError(t, err)
				assert.Equal(t, tt.result, res)
				assert.Empty(t, bookings)
			})
		}
	}
}

func TestStorage_Remove(t *testing.T) {
	for name, factory := range drivers() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStorage(factory(t), "")

			require.NoError(t, store.Save(ctx, "trip_current", record{Name: "Ann", Email: "ann@x.com"}, 0))
			require.NoError(t, store.Remove(ctx, "trip_current"))

			var current record
			res, err := store.Load(ctx, "trip_current", &current)
			require.NoError(t, err)
			assert.Equal(t, storage.Absent, res)

			// removing a missing key is not an error
			assert.NoError(t, store.Remove(ctx, "trip_current"))
		})
	}
}

func TestStorage_Namespace(t *testing.T) {
	ctx := context.Background()
	driver := storage.NewMemoryDriver()

	first := newStorage(driver, "origin-a")
	second := newStorage(driver, "origin-b")

	require.NoError(t, first.Save(ctx, "trip_current", record{Email: "ann@x.com"}, 0))

	var current record
	res, err := second.Load(ctx, "trip_current", &current)
	require.NoError(t, err)
	assert.Equal(t, storage.Absent, res)

	_, found, err := driver.Get(ctx, "origin-a:trip_current")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestStorage_SaveWithTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})
	store := newStorage(storage.NewRedisDriver(client, "trip:changes"), "")

	require.NoError(t, store.Save(ctx, "trip_current", record{Name: "Ann"}, time.Minute))

	mr.FastForward(2 * time.Minute)

	var current record
	res, err := store.Load(ctx, "trip_current", &current)
	require.NoError(t, err)
	assert.Equal(t, storage.Absent, res)
	assert.Zero(t, current)
}

func TestStorage_LoadDriverError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr(), MaxRetries: -1})
	store := newStorage(storage.NewRedisDriver(client, "trip:changes"), "")

	mr.Close()

	var users []record
	_, err := store.Load(context.Background(), "trip_users", &users)

	assert.Error(t, err)
}

func TestStorage_Watch(t *testing.T) {
	for name, factory := range drivers() {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			driver := factory(t)
			store := newStorage(driver, "origin-a")
			other := newStorage(driver, "origin-b")

			changes, err := store.Watch(ctx)
			require.NoError(t, err)

			require.NoError(t, other.Save(ctx, "trip_bookings", []record{}, 0))
			require.NoError(t, store.Save(ctx, "trip_bookings", []record{{Name: "Ann"}}, 0))

			select {
			case key := <-changes:
				assert.Equal(t, "trip_bookings", key)
			case <-time.After(2 * time.Second):
				t.Fatal("expected a change notification")
			}

			cancel()

			assert.Eventually(t, func() bool {
				select {
				case _, ok := <-changes:
					return !ok
				default:
					return false
				}
			}, 2*time.Second, 10*time.Millisecond)
		})
	}
}

func TestStorage_Incr(t *testing.T) {
	for name, factory := range drivers() {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			store := newStorage(factory(t), "origin-a")

			changes, err := store.Watch(ctx)
			require.NoError(t, err)

			for want := int64(1); want <= 3; want++ {
				count, err := store.Incr(ctx, "limiter:1.2.3.4:agent", time.Minute)
				require.NoError(t, err)
				assert.Equal(t, want, count)
			}

			require.NoError(t, store.Save(ctx, "trip_bookings", []record{}, 0))

			select {
			case key := <-changes:
				assert.Equal(t, "trip_bookings", key, "counters are not announced")
			case <-time.After(2 * time.Second):
				t.Fatal("expected a change notification")
			}
		})
	}
}

func TestStorage_IncrWindowExpires(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})
	store := newStorage(storage.NewRedisDriver(client, "trip:changes"), "")

	for i := 0; i < 2; i++ {
		_, err := store.Incr(ctx, "limiter:1.2.3.4", time.Minute)
		require.NoError(t, err)
	}

	mr.FastForward(30 * time.Second)

	count, err := store.Incr(ctx, "limiter:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "later hits do not extend the window")

	mr.FastForward(31 * time.Second)

	count, err = store.Incr(ctx, "limiter:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStorage_IncrNotACounter(t *testing.T) {
	ctx := context.Background()
	store := newStorage(storage.NewMemoryDriver(), "")

	require.NoError(t, store.Save(ctx, "trip_current", record{Name: "Ann"}, 0))

	_, err := store.Incr(ctx, "trip_current", time.Minute)
	assert.Error(t, err)
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "absent", storage.Absent.String())
	assert.Equal(t, "found", storage.Found.String())
	assert.Equal(t, "recovered", storage.Recovered.String())
}
