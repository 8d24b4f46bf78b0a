// Package reflection builds and caches the property model of Go types.
//
// A property is readable when the type has a GetX or IsX method or a field
// named X, and writable when it has a SetX method or a writable field X.
// Methods inherited through embedded fields take part as well; when an
// embedding type redeclares a getter with a more specific result type, the
// more specific one wins.
//
// # Example Usage
//
//	cache := reflection.NewCache(reflection.DefaultCacheConfig())
//	meta, err := cache.MetadataFor(reflect.TypeOf(User{}))
//	if err != nil {
//		return err
//	}
//
//	getter, err := meta.GetterAccessor("userID")
//	if err != nil {
//		return err
//	}
//	id, err := getter.Invoke(&user)
//
// Property names are matched exactly by the accessor lookups. Use
// CanonicalName to map user input such as "USERID" to "userID" first.
package reflection
