package api

// Services group operations by capability. Each holds only a Requester.

type UsersService struct{ r Requester }

type ContactsService struct{ r Requester }

type FilesService struct{ r Requester }

type ChatMessagesService struct{ r Requester }

type MessagesService struct{ r Requester }

type GroupsService struct{ r Requester }

type RoomsService struct{ r Requester }

func NewUsersService(r Requester) UsersService { return UsersService{r} }

func NewContactsService(r Requester) ContactsService { return ContactsService{r} }

func NewFilesService(r Requester) FilesService { return FilesService{r} }

func NewChatMessagesService(r Requester) ChatMessagesService { return ChatMessagesService{r} }

func NewMessagesService(r Requester) MessagesService { return MessagesService{r} }

func NewGroupsService(r Requester) GroupsService { return GroupsService{r} }

func NewRoomsService(r Requester) RoomsService { return RoomsService{r} }

func (c *Client) Users() UsersService {
	return UsersService{c}
}

func (c *Client) Contacts() ContactsService {
	return ContactsService{c}
}

func (c *Client) Files() FilesService {
	return FilesService{c}
}

func (c *Client) ChatMessages() ChatMessagesService {
	return ChatMessagesService{c}
}

func (c *Client) Messages() MessagesService {
	return MessagesService{c}
}

func (c *Client) Groups() GroupsService {
	return GroupsService{c}
}

func (c *Client) Rooms() RoomsService {
	return RoomsService{c}
}
