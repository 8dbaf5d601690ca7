package blob

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/helixedit/internal/config"
	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/event"
	"github.com/dshills/helixedit/internal/session"
)

// fakeS3 keeps objects in a map and pages listings two at a time.
type fakeS3 struct {
	mu   sync.Mutex
	objs map[string][]byte
}

func newFakeS3() *fakeS3 { return &fakeS3{objs: make(map[string][]byte)} }

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.objs[aws.ToString(in.Key)] = data
	f.mu.Unlock()
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	data, ok := f.objs[aws.ToString(in.Key)]
	f.mu.Unlock()
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objs {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) && k > aws.ToString(in.ContinuationToken) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{}
	if len(keys) > 2 {
		keys = keys[:2]
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[1])
	}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(k),
			Size:         aws.Int64(int64(len(f.objs[k]))),
			LastModified: aws.Time(time.Now()),
		})
	}
	return out, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	delete(f.objs, aws.ToString(in.Key))
	f.mu.Unlock()
	return &s3.DeleteObjectOutput{}, nil
}

func keys(infos []Info) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Key
	}
	return out
}

func exercise(t *testing.T, s Store) {
	ctx := context.Background()

	for _, k := range []string{"b/2.json", "a/1.json", "b/1.json", "b/3.json"} {
		info, err := s.Put(ctx, k, []byte(k))
		require.NoError(t, err)
		assert.Equal(t, int64(len(k)), info.Size)
	}

	data, err := s.Get(ctx, "b/1.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("b/1.json"), data)

	_, err = s.Get(ctx, "c/1.json")
	assert.ErrorIs(t, err, ErrNotFound)

	infos, err := s.List(ctx, "b/")
	require.NoError(t, err)
	assert.Equal(t, []string{"b/1.json", "b/2.json", "b/3.json"}, keys(infos))

	_, err = s.Put(ctx, "b/1.json", []byte("again"))
	require.NoError(t, err)
	data, _ = s.Get(ctx, "b/1.json")
	assert.Equal(t, []byte("again"), data)

	require.NoError(t, s.Delete(ctx, "b/2.json"))
	require.NoError(t, s.Delete(ctx, "b/2.json"))
	infos, err = s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1.json", "b/1.json", "b/3.json"}, keys(infos))

	_, err = s.Put(ctx, "", nil)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestFilesystem(t *testing.T) {
	fs, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, fs.Driver())
	exercise(t, fs)

	ctx := context.Background()
	for _, k := range []string{"../escape", "/abs", "a/../../x"} {
		_, err := fs.Put(ctx, k, nil)
		assert.ErrorIs(t, err, ErrInvalidKey, k)
	}
}

func TestS3(t *testing.T) {
	s := newS3WithClient(newFakeS3(), "designs")
	assert.Equal(t, DriverS3, s.Driver())
	exercise(t, s)

	_, err := NewS3(context.Background(), S3Config{})
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.BackupConfig{Driver: "none"})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = Open(ctx, config.BackupConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, s.Driver())

	s, err = Open(ctx, config.BackupConfig{Driver: "fs", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, s.Driver())

	_, err = Open(ctx, config.BackupConfig{Driver: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func sample(n int) design.Design {
	d := design.New().WithHelix(0, &design.Helix{Orientation: design.IdentityQuat})
	for i := 0; i < n; i++ {
		d = d.WithStrand(i, design.NewStrand(design.HelixInterval{Helix: 0, Start: 10 * i, End: 10*i + 5, Forward: true}, 0))
	}
	return design.Reidentify(d)
}

func tickingBackup(store Store, opts ...BackupOption) *Backup {
	b := NewBackup(store, "origami", opts...)
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return b
}

func TestBackupEvery(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	bus := event.NewBus()
	var written []string
	_, err := bus.Subscribe(event.TopicBackupWritten, func(_ context.Context, ev any) error {
		written = append(written, ev.(event.Event[event.BackupWritten]).Payload.Key)
		return nil
	})
	require.NoError(t, err)

	b := tickingBackup(store, WithPrefix("helixedit"), WithEvery(2), WithBus(bus))

	b.OnPush(ctx, sample(1), session.Normal{})
	infos, _ := b.List(ctx)
	assert.Empty(t, infos)

	// Due, but a gesture is in progress.
	b.OnPush(ctx, sample(2), session.BuildingStrand{})
	infos, _ = b.List(ctx)
	assert.Empty(t, infos)

	b.OnPush(ctx, sample(3), session.Normal{})
	infos, err = b.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "helixedit/origami/20260102T030406.000000000Z.json", infos[0].Key)
	assert.Equal(t, []string{infos[0].Key}, written)

	b.OnPush(ctx, sample(4), session.Normal{})
	b.OnPush(ctx, sample(5), session.Normal{})
	infos, _ = b.List(ctx)
	assert.Len(t, infos, 2)

	d, info, err := b.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, infos[1], info)
	assert.Equal(t, 5, d.StrandCount())
}

func TestBackupDisabled(t *testing.T) {
	ctx := context.Background()
	b := tickingBackup(NewMemory())
	for i := 0; i < 5; i++ {
		b.OnPush(ctx, sample(1), session.Normal{})
	}
	_, _, err := b.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = b.Write(ctx, sample(2))
	require.NoError(t, err)
	d, _, err := b.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.StrandCount())
}

func TestBackupPrune(t *testing.T) {
	ctx := context.Background()
	b := tickingBackup(NewMemory())
	for i := 1; i <= 4; i++ {
		_, err := b.Write(ctx, sample(i))
		require.NoError(t, err)
	}
	n, err := b.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	d, _, err := b.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, d.StrandCount())
}
