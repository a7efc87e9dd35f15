package boards_repositories

var boardRepository = &BoardRepository{}
var boardMemberRepository = &BoardMemberRepository{}

func GetBoardRepository() *BoardRepository {
	return boardRepository
}

func GetBoardMemberRepository() *BoardMemberRepository {
	return boardMemberRepository
}
