package main

type EndProgramMsg struct{}
