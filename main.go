/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package main - sdes is an implementation of the Simplified Data Encryption
// Standard, a teaching cipher with the structure of DES scaled down to 8-bit
// blocks and a 10-bit key.
package main

import "github.com/bgallie/sdes/cmd"

func main() {
	cmd.Execute()
}
