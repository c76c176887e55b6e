package bsql

import (
	"bytes"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

func NewDB(db *sql.DB) *DB {
	return &DB{DB: db}
}

func Open(username, password, host, port, dbname string, maxIdleConnection, maxOpenConnection int) *DB {
	db := openSQL(username, password, host, port, dbname)
	db.SetMaxIdleConns(maxIdleConnection)
	db.SetMaxOpenConns(maxOpenConnection)

	if err := db.Ping(); err != nil {
		panic(fmt.Sprintf("failed to ping database: %v", err))
	}

	return NewDB(db)
}

func openSQL(username, password, host, port, dbname string) *sql.DB {
	connectionStrTokens := []string{
		"sslmode=disable",
		"binary_parameters=yes",
	}

	if username != "" {
		connectionStrTokens = append(connectionStrTokens, fmt.Sprintf("user=%s", username))
	}

	if password != "" {
		connectionStrTokens = append(connectionStrTokens, fmt.Sprintf("password=%s", password))
	}

	if host != "" {
		connectionStrTokens = append(connectionStrTokens, fmt.Sprintf("host=%s", host))
	}

	if port != "" {
		connectionStrTokens = append(connectionStrTokens, fmt.Sprintf("port=%s", port))
	}

	if dbname != "" {
		connectionStrTokens = append(connectionStrTokens, fmt.Sprintf("dbname=%s", dbname))
	}

	connectionStr := strings.Join(connectionStrTokens, " ")
	db, err := sql.Open("postgres", connectionStr)
	if err != nil {
		panic(fmt.Sprintf("failed to open database: %v", err))
	}
	return db
}

// Insert builds and runs an INSERT from a column/value map, returning the new id.
// Keys are sorted so the generated SQL is deterministic.
func (db *DB) Insert(tableName string, dict map[string]interface{}) (id int64, err error) {
	var keyBuffer bytes.Buffer
	var valueBuffer bytes.Buffer
	keyBuffer.WriteString(fmt.Sprintf("INSERT INTO %s (", tableName))
	valueBuffer.WriteString(") VALUES (")
	values := []interface{}{}
	var counter int

	for _, entry := range sortDict(dict) {
		keyBuffer.WriteString(entry.key)
		valueBuffer.WriteString(fmt.Sprintf("$%d", counter+1))
		if counter != len(dict)-1 {
			keyBuffer.WriteString(", ")
			valueBuffer.WriteString(", ")
		}
		values = append(values, entry.value)
		counter++
	}
	valueBuffer.WriteString(") RETURNING id;")
	keyBuffer.WriteString(valueBuffer.String())

	err = db.QueryRow(keyBuffer.String(), values...).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, err
}

// Update builds and runs an UPDATE ... WHERE id = $n from a column/value map.
func (db *DB) Update(tableName string, id int64, dict map[string]interface{}) error {
	var buffer bytes.Buffer
	buffer.WriteString(fmt.Sprintf("UPDATE %s SET ", tableName))
	values := []interface{}{}
	var counter int

	for _, entry := range sortDict(dict) {
		buffer.WriteString(fmt.Sprintf("%s = $%d", entry.key, counter+1))
		if counter != len(dict)-1 {
			buffer.WriteString(", ")
		}
		values = append(values, entry.value)
		counter++
	}
	buffer.WriteString(fmt.Sprintf(" WHERE id = $%d;", counter+1))
	values = append(values, id)

	_, err := db.Exec(buffer.String(), values...)
	return err
}

type entry struct {
	key   string
	value interface{}
}

func sortDict(dict map[string]interface{}) []*entry {
	attrs := []string{}
	for key := range dict {
		attrs = append(attrs, key)
	}
	sort.Strings(attrs)
	entries := []*entry{}
	for _, key := range attrs {
		entries = append(entries, &entry{
			key:   key,
			value: dict[key],
		})
	}
	return entries
}
