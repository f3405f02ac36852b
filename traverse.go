package loosecsv

import "io"

// Traversal helpers defined uniformly in terms of repeated Read calls.
// io.EOF terminates the loop; every other error aborts it and is returned.

// Fold threads an accumulator left to right over the remaining records.
func Fold[T any](r *Reader, init T, fn func(T, []string) T) (T, error) {
	acc := init
	for {
		record, err := r.Read()
		if err == io.EOF {
			return acc, nil
		}
		if err != nil {
			return acc, err
		}
		acc = fn(acc, record)
	}
}

// FoldRight folds the remaining records right to left. It materializes the
// whole stream first, so unlike Fold it is not a streaming operation.
func FoldRight[T any](r *Reader, fn func([]string, T) T, init T) (T, error) {
	records, err := r.ReadAll()
	if err != nil {
		return init, err
	}
	acc := init
	for i := len(records) - 1; i >= 0; i-- {
		acc = fn(records[i], acc)
	}
	return acc, nil
}

// Each applies fn to every remaining record, stopping at the first error fn
// returns.
func Each(r *Reader, fn func([]string) error) error {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(record); err != nil {
			return err
		}
	}
}

// EachRow is Each with every record wrapped in the reader's header directory.
func EachRow(r *Reader, fn func(Record) error) error {
	return Each(r, func(fields []string) error {
		return fn(NewRecord(fields, r.Header()))
	})
}

// FoldRows is Fold over header-aware rows.
func FoldRows[T any](r *Reader, init T, fn func(T, Record) T) (T, error) {
	return Fold(r, init, func(acc T, fields []string) T {
		return fn(acc, NewRecord(fields, r.Header()))
	})
}

// ReadAllRows exhausts the reader, wrapping each record with the header
// directory and preserving input order.
func (r *Reader) ReadAllRows() ([]Record, error) {
	var rows []Record
	err := EachRow(r, func(row Record) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
