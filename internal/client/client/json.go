package client

import jsoniter "github.com/json-iterator/go"

// json is the codec used for request and response bodies.
var json = jsoniter.ConfigCompatibleWithStandardLibrary
