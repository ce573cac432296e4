// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdf

// lruCache is a simple LRU cache, used to find image XObjects which can be
// reused.
type lruCache struct {
	capacity    int
	entries     map[string]*cacheEntry
	first, last *cacheEntry
}

type cacheEntry struct {
	prev, next *cacheEntry
	key        string
	ref        Reference
}

func newLRU(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		entries:  make(map[string]*cacheEntry, capacity),
	}
}

// Put adds a reference to the cache.
func (l *lruCache) Put(key string, ref Reference) {
	if l.capacity <= 0 {
		return
	}

	if ent, ok := l.entries[key]; ok {
		ent.ref = ref
		l.moveToFront(ent)
		return
	}

	ent := &cacheEntry{
		key: key,
		ref: ref,
	}
	l.entries[key] = ent
	l.moveToFront(ent)

	if len(l.entries) > l.capacity {
		l.removeLast()
	}
}

// Get returns a reference from the cache and marks it as recently used.
func (l *lruCache) Get(key string) (Reference, bool) {
	ent, ok := l.entries[key]
	if !ok {
		return 0, false
	}

	l.moveToFront(ent)
	return ent.ref, true
}

func (l *lruCache) moveToFront(ent *cacheEntry) {
	if ent == l.first {
		return
	}

	if ent.prev != nil {
		ent.prev.next = ent.next
	}
	if ent.next != nil {
		ent.next.prev = ent.prev
	}
	if ent == l.last {
		l.last = ent.prev
	}

	ent.prev = nil
	ent.next = l.first
	if l.first != nil {
		l.first.prev = ent
	}
	l.first = ent
	if l.last == nil {
		l.last = ent
	}
}

func (l *lruCache) removeLast() {
	last := l.last
	if last == nil {
		return
	}

	delete(l.entries, last.key)
	l.last = last.prev
	if l.last != nil {
		l.last.next = nil
	} else {
		l.first = nil
	}
}
