package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub driver serving canned rows, so iteration failures can be exercised
// without a live database.

type stubDriver struct{}

func (stubDriver) Open(dsn string) (driver.Conn, error) {
	return stubConn{dsn: dsn}, nil
}

type stubConn struct{ dsn string }

func (c stubConn) Prepare(query string) (driver.Stmt, error) {
	return stubStmt{rows: stubsByDSN[c.dsn]}, nil
}
func (stubConn) Close() error              { return nil }
func (stubConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions not supported") }

type stubStmt struct{ rows *stubRows }

func (stubStmt) Close() error  { return nil }
func (stubStmt) NumInput() int { return -1 }
func (stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errors.New("exec not supported")
}
func (s stubStmt) Query(args []driver.Value) (driver.Rows, error) { return s.rows, nil }

type stubRows struct {
	data [][]driver.Value
	err  error
	pos  int
}

func (r *stubRows) Columns() []string {
	return []string{"id", "rp_name", "nickname", "main", "message", "author_id", "created_at", "updated_at"}
}
func (r *stubRows) Close() error { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		if r.err != nil {
			return r.err
		}
		return io.EOF
	}
	copy(dest, r.data[r.pos])
	r.pos++
	return nil
}

var (
	registerOnce sync.Once
	stubsByDSN   = map[string]*stubRows{}
	stubSeq      int
)

func openStubDB(t *testing.T, data [][]driver.Value, rowErr error) *sql.DB {
	registerOnce.Do(func() { sql.Register("pins-stub", stubDriver{}) })

	stubSeq++
	dsn := fmt.Sprintf("stub-%d", stubSeq)
	stubsByDSN[dsn] = &stubRows{data: data, err: rowErr}

	db, err := sql.Open("pins-stub", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func pinRow(id, nickname string, created time.Time) []driver.Value {
	return []driver.Value{
		id, "", nickname, "1", "hello",
		"11111111-1111-4111-8111-111111111111", created, created,
	}
}

func TestListScansAllRows(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	db := openStubDB(t, [][]driver.Value{
		pinRow("id-1", "moonbeam", created),
		pinRow("id-2", "sunray", created.Add(time.Hour)),
	}, nil)

	pins, err := NewPinRepository(db).List(ListFilter{})
	require.NoError(t, err)
	require.Len(t, pins, 2)
	assert.Equal(t, "moonbeam", pins[0].Nickname)
	assert.Equal(t, "sunray", pins[1].Nickname)
	assert.Equal(t, created, pins[0].CreatedAt)
}

// A failure in the middle of iteration must surface as an error, never as
// a shorter successful result.
func TestListPropagatesIterationErrors(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	db := openStubDB(t, [][]driver.Value{
		pinRow("id-1", "moonbeam", created),
	}, errors.New("connection reset"))

	pins, err := NewPinRepository(db).List(ListFilter{})
	require.Error(t, err)
	assert.Nil(t, pins)
}

func TestListPropagatesScanErrors(t *testing.T) {
	bad := pinRow("id-1", "moonbeam", time.Now())
	bad[6] = int64(42) // created_at is not convertible to time.Time
	db := openStubDB(t, [][]driver.Value{bad}, nil)

	pins, err := NewPinRepository(db).List(ListFilter{})
	require.Error(t, err)
	assert.Nil(t, pins)
}
