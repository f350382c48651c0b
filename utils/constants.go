// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// OTPSessionPrefix is the prefix for live OTP session keys, one per device.
const OTPSessionPrefix = "otp:"

// OTPSessionTTL is how long an issued login code stays valid.
const OTPSessionTTL = 5 * time.Minute
