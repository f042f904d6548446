// Package passwords turns plaintext passwords into salted, deliberately slow,
// self-describing hash strings and verifies candidates against them.
//
// Two encodings are supported:
//
//	$2a$10$<22 char salt><31 char digest>                    bcrypt
//	$argon2id$v=19$m=65536,t=1,p=4$<b64 salt>$<b64 digest>   argon2id (PHC)
//
// A Multi hasher writes new hashes with one algorithm and verifies any of
// them, so switching the configured algorithm never locks anyone out.
package passwords
