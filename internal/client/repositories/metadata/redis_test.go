package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHash is an in-memory stand-in for a Redis server holding hashes.
type fakeHash struct {
	data map[string]map[string]string
	err  error

	lastKey string
}

func newFakeHash() *fakeHash {
	return &fakeHash{data: map[string]map[string]string{}}
}

func (f *fakeHash) HGet(_ context.Context, key, field string) *redis.StringCmd {
	f.lastKey = key
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key][field]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeHash) HSet(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.lastKey = key
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	h, ok := f.data[key]
	if !ok {
		h = map[string]string{}
		f.data[key] = h
	}
	for i := 0; i+1 < len(values); i += 2 {
		field := values[i].(string)
		switch v := values[i+1].(type) {
		case []byte:
			h[field] = string(v)
		case string:
			h[field] = v
		}
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (f *fakeHash) HDel(_ context.Context, key string, fields ...string) *redis.IntCmd {
	f.lastKey = key
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	for _, fl := range fields {
		delete(f.data[key], fl)
	}
	return redis.NewIntResult(int64(len(fields)), nil)
}

func (f *fakeHash) HGetAll(_ context.Context, key string) *redis.MapStringStringCmd {
	f.lastKey = key
	if f.err != nil {
		return redis.NewMapStringStringResult(nil, f.err)
	}
	out := map[string]string{}
	for k, v := range f.data[key] {
		out[k] = v
	}
	return redis.NewMapStringStringResult(out, nil)
}

func (f *fakeHash) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	for _, k := range keys {
		f.lastKey = k
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisRepository_Contract(t *testing.T) {
	ctx := context.Background()
	fake := newFakeHash()
	r := NewRedisRepository(fake, "")

	v, err := r.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, DefaultRedisKey, fake.lastKey)

	require.NoError(t, r.SetMany(ctx, map[string][]byte{"access_token": []byte("A"), "refresh_token": []byte("R")}))
	require.NoError(t, r.Set(ctx, "user_id", []byte("7")))

	v, err = r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), v)

	require.NoError(t, r.Delete(ctx, "access_token"))
	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"refresh_token": []byte("R"), "user_id": []byte("7")}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestRedisRepository_Namespace(t *testing.T) {
	fake := newFakeHash()
	r := NewRedisRepository(fake, "donatello:alice")

	require.NoError(t, r.Set(context.Background(), "k", []byte("v")))
	assert.Equal(t, "v", fake.data["donatello:alice"]["k"])
	assert.NotContains(t, fake.data, DefaultRedisKey)
}

func TestRedisRepository_NoopOnEmptyInput(t *testing.T) {
	fake := newFakeHash()
	fake.err = errors.New("must not be called")
	r := NewRedisRepository(fake, "")

	require.NoError(t, r.SetMany(context.Background(), nil))
	require.NoError(t, r.Delete(context.Background()))
}

func TestRedisRepository_ErrorsWrapped(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	fake := newFakeHash()
	fake.err = boom
	r := NewRedisRepository(fake, "")

	_, err := r.Get(ctx, "k")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to get metadata[k]")

	err = r.Set(ctx, "k", nil)
	require.ErrorIs(t, err, boom)

	err = r.Delete(ctx, "k")
	require.ErrorIs(t, err, boom)

	_, err = r.List(ctx)
	require.ErrorIs(t, err, boom)

	err = r.Clear(ctx)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to clear metadata")
}
