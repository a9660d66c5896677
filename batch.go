package kmem

import "unsafe"

// The canonical form of every allocation operation is the batch form taking a
// slice of MapRequest. The helpers in this file are thin adapters onto it and
// introduce no semantics of their own.

// MapOne maps a single range, returning true on success. The request is
// aliased rather than copied so that Addr and Err are visible to the caller.
func MapOne(a Allocation, request *MapRequest) bool {
	return a.Map(unsafe.Slice(request, 1)) == 1
}

// UnmapOne unmaps a single range, returning true on success.
func UnmapOne(a Allocation, request *MapRequest) bool {
	return a.Unmap(unsafe.Slice(request, 1)) == 1
}

// PrefaultOne prefaults a single mapped range, returning true on success.
func PrefaultOne(a Allocation, request *MapRequest) bool {
	return a.Prefault(unsafe.Slice(request, 1)) == 1
}

// DiscardOne discards a single mapped range, returning true on success.
func DiscardOne(a Allocation, request *MapRequest) bool {
	return a.Discard(unsafe.Slice(request, 1)) == 1
}

// MapEach maps each request in turn and returns the number that succeeded.
func MapEach(a Allocation, requests ...*MapRequest) int {
	count := 0
	for _, request := range requests {
		if MapOne(a, request) {
			count++
		}
	}
	return count
}

// UnmapEach unmaps each request in turn and returns the number that succeeded.
func UnmapEach(a Allocation, requests ...*MapRequest) int {
	count := 0
	for _, request := range requests {
		if UnmapOne(a, request) {
			count++
		}
	}
	return count
}

// PrefaultEach prefaults each request in turn and returns the number that succeeded.
func PrefaultEach(a Allocation, requests ...*MapRequest) int {
	count := 0
	for _, request := range requests {
		if PrefaultOne(a, request) {
			count++
		}
	}
	return count
}

// DiscardEach discards each request in turn and returns the number that succeeded.
func DiscardEach(a Allocation, requests ...*MapRequest) int {
	count := 0
	for _, request := range requests {
		if DiscardOne(a, request) {
			count++
		}
	}
	return count
}

// MapWhole maps the entire allocation into the calling process and returns
// the completed request. Callers must check the request's Err and Addr.
func MapWhole(a Allocation) MapRequest {
	request := MapRequest{Offset: 0, Length: a.Size()}
	MapOne(a, &request)
	return request
}
