// Package collection provides a generic, thread-safe key/value bag.
//
// A Collection is the basic data holder used across mkit: session data,
// flash messages and application settings are all collections. It offers
// get/set/has/clear semantics over string keys plus bulk variants that merge
// or replace the whole data set.
//
// # Usage
//
//	c := collection.New(map[string]int{"a": 1})
//	c.Set("b", 2).SetMany(map[string]int{"c": 3})
//
//	v, ok := c.Get("b")      // 2, true
//	c.Has("a", "b")          // true
//	c.GetMany("a", "zzz")    // map[a:1]
//	c.Clear("a").ClearAll()
//
// All methods are safe for concurrent use. Values returned from GetAll and
// GetMany are copies of the internal map, so callers can modify them freely.
package collection
