package redis

// Encode exposes encode for tests.
var Encode = encode

// Decode exposes decode for tests.
var Decode = decode
